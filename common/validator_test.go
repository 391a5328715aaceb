package common

import (
	"testing"

	"go-bank-simulator/model"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	valid := model.CreateAccountRequest{
		OwnerName:      "Asha Rao",
		Email:          "asha@example.com",
		DOB:            "1990-04-12",
		Location:       "Chennai",
		InitialBalance: "250.00",
	}

	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(valid))
	})

	t.Run("invalid email", func(t *testing.T) {
		req := valid
		req.Email = "asha"
		assert.Error(t, ValidateStruct(req))
	})

	t.Run("invalid date of birth", func(t *testing.T) {
		req := valid
		req.DOB = "1990-13-45"
		assert.Error(t, ValidateStruct(req))
	})

	t.Run("missing owner name", func(t *testing.T) {
		req := valid
		req.OwnerName = ""
		assert.Error(t, ValidateStruct(req))
	})

	t.Run("non-numeric initial balance", func(t *testing.T) {
		req := valid
		req.InitialBalance = "lots"
		assert.Error(t, ValidateStruct(req))
	})
}
