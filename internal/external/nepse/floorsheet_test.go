package nepse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFloorSheetHTML = `
<html><body>
<table class="table">
	<thead>
		<tr>
			<th>SN</th><th>Contract No.</th><th>Symbol</th><th>Buyer</th>
			<th>Seller</th><th>Quantity</th><th>Rate</th><th>Amount</th>
		</tr>
	</thead>
	<tbody>
		<tr>
			<td>1</td><td>2025063001018167</td><td>SGHC</td><td>52</td>
			<td>56</td><td>220</td><td>391.00</td><td>86,020.00</td>
		</tr>
		<tr>
			<td>2</td><td>2025063001018166</td><td>NMIC</td><td>44</td>
			<td>52</td><td>100</td><td>900.00</td><td>90,000.00</td>
		</tr>
	</tbody>
</table>
</body></html>`

func TestParseFloorSheetHTML(t *testing.T) {
	rows, err := parseFloorSheetHTML(sampleFloorSheetHTML)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "SGHC", rows[0]["Symbol"])
	assert.Equal(t, "52", rows[0]["Buyer"])
	assert.Equal(t, "86,020.00", rows[0]["Amount"])
	assert.Equal(t, "2025063001018166", rows[1]["Contract No."])
}

func TestParseFloorSheetHTMLNoTable(t *testing.T) {
	rows, err := parseFloorSheetHTML("<html><body><p>No trading today</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseFloorSheetHTMLEmptyBody(t *testing.T) {
	html := `<table><thead><tr><th>SN</th><th>Symbol</th></tr></thead><tbody></tbody></table>`
	rows, err := parseFloorSheetHTML(html)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
