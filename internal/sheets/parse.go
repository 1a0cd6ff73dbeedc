package sheets

import (
	"errors"
	"fmt"
	"strings"

	"cardledger/internal/core"
)

// ErrNoHeader is returned when a statement has no header row.
var ErrNoHeader = errors.New("statement has no header row")

// requiredColumns must be present in the header of every statement.
var requiredColumns = []string{
	core.FieldOperationDate,
	core.FieldAmount,
}

// ParseRows converts a statement matrix (header row first, as returned by
// the Sheets API or a CSV reader) into records. Columns are located by
// header name, so their order does not matter and unknown columns are
// ignored. Rows that are entirely blank are dropped.
func ParseRows(values [][]string) ([]core.Record, error) {
	if len(values) == 0 {
		return nil, ErrNoHeader
	}
	headers := values[0]

	var missing []string
	for _, col := range requiredColumns {
		if indexOf(headers, col) == -1 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unexpected statement header: missing %s; got headers=%v",
			strings.Join(missing, ","), headers)
	}

	cols := map[string]int{}
	for _, name := range []string{
		core.FieldOperationDate, core.FieldPaymentDate, core.FieldCardNumber,
		core.FieldStatus, core.FieldAmount, core.FieldCurrency,
		core.FieldRoundedAmount, core.FieldCategory, core.FieldDescription,
	} {
		cols[name] = indexOf(headers, name)
	}

	out := make([]core.Record, 0, len(values)-1)
	for _, row := range values[1:] {
		if blank(row) {
			continue
		}
		get := func(name string) string {
			return strings.TrimSpace(safeGet(row, cols[name]))
		}
		out = append(out, core.Record{
			OperationDate: get(core.FieldOperationDate),
			PaymentDate:   get(core.FieldPaymentDate),
			CardNumber:    get(core.FieldCardNumber),
			Status:        core.Status(get(core.FieldStatus)),
			Amount:        core.ParseAmount(get(core.FieldAmount)),
			Currency:      get(core.FieldCurrency),
			RoundedAmount: core.ParseAmount(get(core.FieldRoundedAmount)),
			Category:      get(core.FieldCategory),
			Description:   get(core.FieldDescription),
		})
	}
	return out, nil
}

// ToStrings flattens a row of untyped cell values.
func ToStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		if v == nil {
			continue
		}
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(v, "\ufeff")), strings.TrimSpace(target)) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
