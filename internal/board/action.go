package board

import (
	"fmt"
	"strconv"

	"github.com/pwrequiem/go-board-archive/internal/model"
)

// rankNames maps the type-9 role parameter to a rank title. Values outside
// the table render as their raw number.
var rankNames = map[int32]string{
	2: "Master",
	3: "Marshal",
	4: "Major",
	5: "Captain",
	6: "Private",
}

// Classify maps a record's type code and params to a readable description
// and the canonical value (param0, the quantity field for contributions).
// It is total: unknown type codes fall through to a generic form.
func Classify(typ, p0, p1, p2 int32) (string, int64) {
	return decodeAction(typ, p0, p1, p2), int64(p0)
}

func decodeAction(typ, p0, p1, p2 int32) string {
	switch typ {
	case model.TypeItem:
		return fmt.Sprintf("received item %d", p0)
	case model.TypeValor:
		return fmt.Sprintf("contribution (valor): %d", p0)
	case model.TypeGold:
		return fmt.Sprintf("contribution (gold): %d", p0)
	case model.TypeInvite:
		return fmt.Sprintf("invited player %d", p0)
	case model.TypeJoin:
		return "joined guild"
	case model.TypeDecline:
		return "declined invite"
	case model.TypeLeave:
		return "left guild"
	case model.TypeRank:
		rank, ok := rankNames[p1]
		if !ok {
			rank = strconv.Itoa(int(p1))
		}
		act := "demoted"
		if p2 == 1 {
			act = "promoted"
		}
		return fmt.Sprintf("%s %d to %s", act, p0, rank)
	case model.TypeExpel:
		return fmt.Sprintf("expelled %d", p0)
	}
	return fmt.Sprintf("action %d", typ)
}
