package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
)

func TestValidator_EntityType(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name       string
		entityType string
		wantErr    bool
	}{
		{"starships", domain.EntityTypeStarships, false},
		{"empty", "", true},
		{"not mirrored", "planets", true},
		{"case sensitive", "Starships", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(TriggerSyncRequest{EntityType: tt.entityType})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))

	errs := FormatValidationError(errors.New("not a validation error"))
	assert.Equal(t, "Invalid request format", errs["error"])

	err := GetValidator().ValidateStruct(TriggerSyncRequest{EntityType: "vehicles"})
	errs = FormatValidationError(err)
	assert.Contains(t, errs["entitytype"], "starships")
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	status, msg := mapServiceErrorToUserMessage(nil)
	assert.Equal(t, 500, status)
	assert.Equal(t, ErrMsgUnknownError, msg)

	status, msg = mapServiceErrorToUserMessage(errors.New("pq: relation does not exist"))
	assert.Equal(t, 500, status)
	assert.Equal(t, ErrMsgGenericServerError, msg, "raw errors never reach the caller")

	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{fmt.Errorf("%w: held", domain.ErrLockBusy), 409, ErrMsgLockBusyError},
		{fmt.Errorf("%w: 503", domain.ErrRemoteUnavailable), 502, ErrMsgUnavailableError},
		{domain.ErrInvalidRecord, 502, ErrMsgInvalidRecordError},
		{fmt.Errorf("%w: insert", domain.ErrPersistence), 500, ErrMsgPersistenceError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
