package floorsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/floorsight/backend/internal/contracts"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		row        contracts.RawRow
		candidates []string
		want       any
		wantFound  bool
	}{
		{
			name:       "exact match",
			row:        contracts.RawRow{"Symbol": "SGHC"},
			candidates: symbolAliases,
			want:       "SGHC",
			wantFound:  true,
		},
		{
			name:       "case and punctuation insensitive",
			row:        contracts.RawRow{"BUYER BROKER": "52"},
			candidates: buyerAliases,
			want:       "52",
			wantFound:  true,
		},
		{
			name:       "underscored header",
			row:        contracts.RawRow{"Contract_No": "2025063001018167"},
			candidates: contractAliases,
			want:       "2025063001018167",
			wantFound:  true,
		},
		{
			name:       "candidate priority over row layout",
			row:        contracts.RawRow{"Stock": "NMIC", "Symbol": "SGHC"},
			candidates: symbolAliases,
			want:       "SGHC",
			wantFound:  true,
		},
		{
			name:       "empty string treated as absent",
			row:        contracts.RawRow{"Symbol": "", "stock": "SGHC"},
			candidates: symbolAliases,
			want:       "SGHC",
			wantFound:  true,
		},
		{
			name:       "nil treated as absent",
			row:        contracts.RawRow{"Rate": nil},
			candidates: rateAliases,
			wantFound:  false,
		},
		{
			name:       "numeric zero is a value",
			row:        contracts.RawRow{"Qty": float64(0)},
			candidates: quantityAliases,
			want:       float64(0),
			wantFound:  true,
		},
		{
			name:       "no match",
			row:        contracts.RawRow{"Remarks": "x"},
			candidates: symbolAliases,
			wantFound:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Resolve(tt.row, tt.candidates)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "buyerbroker", normalizeKey("Buyer Broker"))
	assert.Equal(t, "buyerbroker", normalizeKey("BUYER_BROKER"))
	assert.Equal(t, "sn", normalizeKey("S.N."))
	assert.Equal(t, "qty2", normalizeKey("Qty-2"))
}
