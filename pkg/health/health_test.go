package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name  string
	err   error
	calls int
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(ctx context.Context) error {
	s.calls++
	return s.err
}

func TestReady_StopsAtFirstFailure(t *testing.T) {
	bad := &stubChecker{name: "postgres", err: errors.New("connection refused")}
	after := &stubChecker{name: "templates"}
	svc := NewService(bad, after)

	err := svc.Ready(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
	assert.Equal(t, 0, after.calls)
}

func TestReport_RunsAllCheckers(t *testing.T) {
	svc := NewService(
		&stubChecker{name: "postgres", err: errors.New("down")},
		&stubChecker{name: "templates"},
	)

	rep := svc.Report(context.Background())
	assert.False(t, rep.Ready)
	assert.Equal(t, "down", rep.Checks["postgres"])
	assert.Equal(t, "ok", rep.Checks["templates"])
}

func TestReady_NoCheckers(t *testing.T) {
	svc := NewService()
	assert.NoError(t, svc.Ready(context.Background()))
	assert.True(t, svc.Report(context.Background()).Ready)
}
