package commands

import (
	"fmt"
	"strings"
	"time"

	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	"quill/contexts/community-content/content-service/ports"
)

func resolveNow(clock ports.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now().UTC()
}

func validatePayload(validator ports.Validator, payload any) error {
	if validator == nil {
		return nil
	}
	if err := validator.Validate(payload); err != nil {
		return domainerrors.ValidationError{Message: err.Error()}
	}
	return nil
}

func upstreamFailure(operation string, err error) error {
	return fmt.Errorf("%s: %w: %w", operation, domainerrors.ErrUpstreamStoreFailure, err)
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(*value)
	return &out
}

func removeStaged(files ports.StagedFiles, path string) {
	if files == nil || path == "" {
		return
	}
	_ = files.Remove(path)
}
