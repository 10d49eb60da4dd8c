package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suicart/escrow-backend/internal/models"
)

func TestBuildUpdateOrdersColumns(t *testing.T) {
	patch := models.Patch{
		models.ColStatus:  models.TxnCompleted,
		models.ColAmount:  12.5,
		models.ColAssetID: "asset-9",
	}
	q, args := buildUpdate("transactions", "id", "tx-1", patch, "id")

	require.Equal(t, "UPDATE transactions SET amount=$2, asset_id=$3, status=$4 WHERE id=$1 RETURNING id", q)
	require.Equal(t, []any{"tx-1", 12.5, "asset-9", models.TxnCompleted}, args)
}

func TestBuildUpdateNullValue(t *testing.T) {
	q, args := buildUpdate("user_profiles", "address", "0xA", models.Patch{models.ColUsername: nil}, "address")

	require.Equal(t, "UPDATE user_profiles SET username=$2 WHERE address=$1 RETURNING address", q)
	require.Len(t, args, 2)
	require.Nil(t, args[1])
}
