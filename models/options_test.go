package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOption(t *testing.T) {
	assert.True(t, ValidOption(Statuses, StatusPending))
	assert.True(t, ValidOption(Statuses, StatusMonitoring))
	assert.True(t, ValidOption(Statuses, StatusCompleted))
	assert.False(t, ValidOption(Statuses, "Arquivada"))
	assert.False(t, ValidOption(Statuses, ""))

	assert.True(t, ValidOption(Origins, "Telefone"))
	assert.False(t, ValidOption(Origins, "telefone"), "Matching is exact, not case-folded")

	assert.True(t, ValidOption(Neighborhoods, "CENTENÁRIO"))
	assert.True(t, ValidOption(Zones, "1° DISTRITO"))
	assert.False(t, ValidOption(Inspectors, "FULANO DE TAL - 000.000"))
}
