// AngelaMos | 2026
// id.go

package applicant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/onms-dev/crm-backend/internal/store"
)

const (
	idPrefix   = "ONMS"
	idPadWidth = 4
)

// GenerateID returns the next applicant ID: the ONMS prefix followed by the
// highest existing numeric suffix plus one, zero-padded to four digits.
// A dataset with no usable IDs yields ONMS0001. Deleted IDs are never
// reissued downward, and past ONMS9999 the number simply widens.
//
// Must be called inside the same locked cycle that appends the new row, or
// two concurrent creates could mint the same ID.
func GenerateID(t *store.Table) string {
	maxSuffix := -1

	idx := t.ColumnIndex(store.ColIDNumber)
	if idx >= 0 {
		for _, row := range t.Rows {
			if idx >= len(row) {
				continue
			}

			id := strings.TrimSpace(row[idx])
			if !strings.HasPrefix(id, idPrefix) {
				continue
			}

			n, err := strconv.Atoi(id[len(idPrefix):])
			if err != nil || n < 0 {
				continue
			}

			if n > maxSuffix {
				maxSuffix = n
			}
		}
	}

	if maxSuffix < 0 {
		return fmt.Sprintf("%s%0*d", idPrefix, idPadWidth, 1)
	}

	return fmt.Sprintf("%s%0*d", idPrefix, idPadWidth, maxSuffix+1)
}
