package queries_test

import (
	"testing"

	"pharmacy/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPendingPrescriptionsQuery_Valid(t *testing.T) {
	query := queries.NewGetPendingPrescriptionsQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetPendingPrescriptionsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPendingPrescriptionsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingPrescriptionsQueryIsNotConstructed)
}
