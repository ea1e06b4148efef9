package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"ADMIN", RoleAdmin, false},
		{"DOCTOR", RoleDoctor, false},
		{"PATIENT", RolePatient, false},
		{"admin", "", true},
		{"SUPERUSER", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestRoleDashboardPath(t *testing.T) {
	assert.Equal(t, "/dashboard/admin", RoleAdmin.DashboardPath())
	assert.Equal(t, "/dashboard/doctor", RoleDoctor.DashboardPath())
	assert.Equal(t, "/dashboard/patient", RolePatient.DashboardPath())
}

func TestValidPurpose(t *testing.T) {
	assert.True(t, ValidPurpose("LOGIN"))
	assert.True(t, ValidPurpose("REGISTER"))
	assert.True(t, ValidPurpose("FORGET_PASSWORD"))
	assert.False(t, ValidPurpose("login"))
	assert.False(t, ValidPurpose("RESET"))
}

func TestAppointmentStatusTransitions(t *testing.T) {
	assert.True(t, AppointmentPending.CanTransition(AppointmentConfirmed))
	assert.True(t, AppointmentPending.CanTransition(AppointmentRejected))
	assert.True(t, AppointmentPending.CanTransition(AppointmentCancelled))
	assert.True(t, AppointmentPending.CanTransition(AppointmentExpired))
	assert.True(t, AppointmentConfirmed.CanTransition(AppointmentCompleted))
	assert.True(t, AppointmentConfirmed.CanTransition(AppointmentCancelled))

	assert.False(t, AppointmentPending.CanTransition(AppointmentCompleted))
	assert.False(t, AppointmentCompleted.CanTransition(AppointmentCancelled))
	assert.False(t, AppointmentCancelled.CanTransition(AppointmentConfirmed))
	assert.False(t, AppointmentRejected.CanTransition(AppointmentConfirmed))
	assert.False(t, AppointmentExpired.CanTransition(AppointmentConfirmed))
}
