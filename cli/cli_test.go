package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCLI_PromptRetries(t *testing.T) {
	t.Run("promptInt retries until well-formed", func(t *testing.T) {
		var out bytes.Buffer
		c := New(strings.NewReader("abc\n\n42\n"), &out, nil, nil, nil)

		value, ok := c.promptInt("choice: ")

		assert.True(t, ok)
		assert.Equal(t, 42, value)
		assert.Contains(t, out.String(), "Invalid number, please try again.")
	})

	t.Run("promptAmount retries until well-formed decimal", func(t *testing.T) {
		var out bytes.Buffer
		c := New(strings.NewReader("ten\n10.50\n"), &out, nil, nil, nil)

		value, ok := c.promptAmount("amount: ")

		assert.True(t, ok)
		assert.True(t, value.Equal(decimal.RequireFromString("10.50")))
		assert.Contains(t, out.String(), "Invalid amount, please try again.")
	})

	t.Run("promptDate retries until valid calendar date", func(t *testing.T) {
		var out bytes.Buffer
		c := New(strings.NewReader("1990-13-45\n1990-04-12\n"), &out, nil, nil, nil)

		value, ok := c.promptDate("dob: ")

		assert.True(t, ok)
		assert.Equal(t, "1990-04-12", value)
		assert.Contains(t, out.String(), "Invalid date!")
	})

	t.Run("prompt reports end of input", func(t *testing.T) {
		var out bytes.Buffer
		c := New(strings.NewReader(""), &out, nil, nil, nil)

		_, ok := c.promptInt("choice: ")

		assert.False(t, ok)
	})
}

func TestCLI_Run(t *testing.T) {
	t.Run("exit option ends the session", func(t *testing.T) {
		var out bytes.Buffer
		c := New(strings.NewReader("7\n"), &out, nil, nil, nil)

		c.Run(context.Background())

		assert.Contains(t, out.String(), "Welcome to Banking Simulator")
		assert.Contains(t, out.String(), "Goodbye!")
	})

	t.Run("unknown choice keeps the loop alive", func(t *testing.T) {
		var out bytes.Buffer
		c := New(strings.NewReader("9\n7\n"), &out, nil, nil, nil)

		c.Run(context.Background())

		assert.Contains(t, out.String(), "Invalid choice, please select 1-8.")
		assert.Contains(t, out.String(), "Goodbye!")
	})

	t.Run("end of input ends the session", func(t *testing.T) {
		var out bytes.Buffer
		c := New(strings.NewReader(""), &out, nil, nil, nil)

		c.Run(context.Background())

		assert.Contains(t, out.String(), "Welcome to Banking Simulator")
	})
}
