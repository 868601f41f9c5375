package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorsight/backend/internal/contracts"
)

func TestRows(t *testing.T) {
	csvData := `SN,ContractNo,Symbol,Buyer,Seller,Quantity,Rate,Amount
1,2025063001018167,SGHC,56,52,220,391,"86,020"
2,2025063001018166,SGHC,52,52,100,392,"39,200"
`

	rows, err := Rows(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "SGHC", rows[0]["Symbol"])
	assert.Equal(t, "86,020", rows[0]["Amount"], "quoted separators survive extraction")
	assert.Equal(t, "2025063001018166", rows[1]["ContractNo"])
}

func TestRowsRaggedAndBlank(t *testing.T) {
	csvData := "Symbol,Buyer,Seller,Quantity,Rate\n" +
		"SGHC,52,56,220\n" + // short record
		",,,,\n" + // blank record
		"NMIC,44,52,100,900\n"

	rows, err := Rows(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "", rows[0]["Rate"], "short records pad missing cells")
	assert.Equal(t, "900", rows[1]["Rate"])
}

func TestRowsEmptyInput(t *testing.T) {
	_, err := Rows(strings.NewReader(""))
	assert.ErrorIs(t, err, contracts.ErrNoRows)

	_, err = Rows(strings.NewReader("Symbol,Buyer,Seller\n"))
	assert.ErrorIs(t, err, contracts.ErrNoRows)
}
