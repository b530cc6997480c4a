package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunChecks(t *testing.T) {
	ran := 0
	checks := []check{
		{name: "ok", configured: true, run: func(ctx context.Context) error { ran++; return nil }},
		{name: "broken", configured: true, run: func(ctx context.Context) error { ran++; return errors.New("401 unauthorized") }},
		{name: "absent", configured: false, run: func(ctx context.Context) error { ran++; return nil }},
	}

	var buf bytes.Buffer
	failed := runChecks(context.Background(), &buf, checks)

	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, ran)
	assert.Contains(t, buf.String(), "FAILED: 401 unauthorized")
	assert.Contains(t, buf.String(), "missing")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "", maskKey(""))
	assert.Equal(t, "(set)", maskKey("short"))
	assert.Equal(t, "(AIzaSyAb...)", maskKey("AIzaSyAbcdefghijkl"))
}
