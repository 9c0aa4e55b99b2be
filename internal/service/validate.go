package service

import (
	"strings"

	"github.com/Egor213/LogVault/internal/domain"
	"github.com/Egor213/LogVault/internal/repo/repotypes"
)

func validateService(service string) error {
	if strings.TrimSpace(service) == "" {
		return ErrEmptyService
	}
	return nil
}

func validateSendLog(in domain.SendLogInput) error {
	if err := validateService(in.Service); err != nil {
		return err
	}
	if in.Message == nil {
		return ErrMissingMessage
	}
	return nil
}

func validateLogFilter(lf repotypes.LogFilter) error {
	if err := validateService(lf.Service); err != nil {
		return err
	}
	if lf.From.IsZero() {
		return ErrMissingStart
	}
	if lf.To.IsZero() {
		return ErrMissingEnd
	}
	if lf.From.After(lf.To) {
		return ErrStartAfterEnd
	}
	return nil
}
