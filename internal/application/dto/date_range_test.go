package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
)

func TestParseDateRange_FinDeDiaInclusivo(t *testing.T) {
	r, err := dto.ParseDateRange("2024-03-01", "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, r.From)
	require.NotNil(t, r.To)
	assert.Equal(t, 23, r.To.Hour())
	assert.Equal(t, 59, r.To.Minute())
	assert.True(t, r.To.After(*r.From))
}

func TestParseDateRange_ExtremosVaciosQuedanAbiertos(t *testing.T) {
	r, err := dto.ParseDateRange("", " ")
	require.NoError(t, err)
	assert.Nil(t, r.From)
	assert.Nil(t, r.To)

	r, err = dto.ParseDateRange("2024-03-01", "")
	require.NoError(t, err)
	assert.NotNil(t, r.From)
	assert.Nil(t, r.To)
}

func TestParseDateRange_Rechazos(t *testing.T) {
	_, err := dto.ParseDateRange("01/03/2024", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "fecha_inicio", ve.Field)

	_, err = dto.ParseDateRange("", "2024-13-01")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "fecha_fin", ve.Field)

	_, err = dto.ParseDateRange("2024-03-10", "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
