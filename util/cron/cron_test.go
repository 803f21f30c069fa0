package cron

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRunNow(t *testing.T) {
	c := NewCron()
	runs := 0
	var failed []string
	c.Register("ok", "0 0 * * * *", func(ctx context.Context) error {
		runs++
		return nil
	})
	c.Register("broken", "0 0 * * * *", func(ctx context.Context) error {
		return errors.New("boom")
	}, func(name string, err error) {
		failed = append(failed, name+": "+err.Error())
	})

	c.RunNow()
	assert.Equal(t, 1, runs)
	assert.Equal(t, []string{"broken: boom"}, failed)
}
