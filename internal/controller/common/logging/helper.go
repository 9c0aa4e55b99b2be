package logginghelper

import (
	"github.com/Egor213/LogVault/internal/domain"
	"github.com/Egor213/LogVault/internal/repo/repotypes"
	log "github.com/sirupsen/logrus"
)

func LogReceived(in domain.SendLogInput) {
	log.WithFields(log.Fields{
		"service":   in.Service,
		"timestamp": in.Timestamp,
	}).Info("Received log via HTTP")
}

func LogSaved(entry domain.LogEntry) {
	log.WithFields(log.Fields{
		"service":   entry.Service,
		"id":        entry.ID,
		"timestamp": entry.Timestamp,
	}).Info("Log saved successfully")
}

func LogError(in domain.SendLogInput, err error) {
	log.WithFields(log.Fields{
		"service": in.Service,
		"error":   err,
	}).Error("Failed to save log")
}

func LogQuery(lf repotypes.LogFilter, found int) {
	log.WithFields(log.Fields{
		"service": lf.Service,
		"from":    lf.From,
		"to":      lf.To,
		"found":   found,
	}).Info("Logs queried")
}

func LogQueryError(lf repotypes.LogFilter, err error) {
	log.WithFields(log.Fields{
		"service": lf.Service,
		"from":    lf.From,
		"to":      lf.To,
		"error":   err,
	}).Error("Failed to query logs")
}
