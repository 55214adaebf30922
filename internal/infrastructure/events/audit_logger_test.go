package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

type fakePublisher struct {
	subject string
	data    []byte
	err     error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.subject, f.data = subject, data
	return f.err
}

func TestLogAuditLogger_LogEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogAuditLogger(log.New(&buf, "", 0))

	event := domain.NewAuditEvent(domain.UserLoginEvent, "user-1").WithEmail("a@b.c")
	require.NoError(t, l.LogEvent(context.Background(), event))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "audit: "))
	assert.Contains(t, out, `"event_type":"USER_LOGIN"`)
	assert.Contains(t, out, `"email":"a@b.c"`)
}

func TestNATSAuditLogger_LogEvent(t *testing.T) {
	pub := &fakePublisher{}
	l := NewNATSAuditLogger(pub, "fittrack.audit")

	event := domain.NewAuditEvent(domain.EmailOTPVerifyEvent, "user-2")
	require.NoError(t, l.LogEvent(context.Background(), event))
	assert.Equal(t, "fittrack.audit.EMAIL_OTP_VERIFIED", pub.subject)

	var decoded domain.AuditEvent
	require.NoError(t, json.Unmarshal(pub.data, &decoded))
	assert.Equal(t, "user-2", decoded.UserID)
	assert.True(t, decoded.Success)

	pub.err = errors.New("connection closed")
	assert.ErrorContains(t, l.LogEvent(context.Background(), event), "connection closed")
}

func TestNATSAuditLogger_SubjectWithoutPrefix(t *testing.T) {
	l := NewNATSAuditLogger(&fakePublisher{}, "")
	assert.Equal(t, "USER_LOGOUT", l.Subject(domain.UserLogoutEvent))
}

func TestMultiAuditLogger(t *testing.T) {
	ok := &fakePublisher{}
	failing := &fakePublisher{err: errors.New("down")}
	m := MultiAuditLogger{
		NewNATSAuditLogger(ok, "a"),
		NewNATSAuditLogger(failing, "b"),
	}

	err := m.LogEvent(context.Background(), domain.NewAuditEvent(domain.UserRegistrationEvent, "u"))
	assert.ErrorContains(t, err, "down")
	assert.Equal(t, "a.USER_REGISTERED", ok.subject, "first logger still receives the event")
}
