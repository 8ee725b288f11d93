package qna

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/investmetic/investmetic/internal/users"
)

// KeywordTarget selects which field a keyword search applies to.
type KeywordTarget string

const (
	TargetTitle          KeywordTarget = "TITLE"
	TargetContent        KeywordTarget = "CONTENT"
	TargetTitleOrContent KeywordTarget = "TITLE_OR_CONTENT"
	TargetStrategyName   KeywordTarget = "STRATEGY_NAME"
	TargetInvestorName   KeywordTarget = "INVESTOR_NAME"
	TargetTraderName     KeywordTarget = "TRADER_NAME"
)

// StateFilter narrows a listing to one lifecycle state. Any other value
// leaves the listing unfiltered by state.
type StateFilter string

const (
	FilterWaiting   StateFilter = "WAITING"
	FilterCompleted StateFilter = "COMPLETED"
)

// Filter is the user-supplied search request handed to Compile.
type Filter struct {
	Keyword string
	Target  KeywordTarget
	State   StateFilter
}

// Field names a searchable dimension of the inquiry join.
type Field string

const (
	FieldAskerID        Field = "asker_id"
	FieldOwnerID        Field = "owner_id"
	FieldTitle          Field = "title"
	FieldContent        Field = "content"
	FieldTitleOrContent Field = "title_or_content"
	FieldStrategyName   Field = "strategy_name"
	FieldAskerNickname  Field = "asker_nickname"
	FieldOwnerNickname  Field = "owner_nickname"
	FieldState          Field = "state"
)

// Op is the comparison applied to a field.
type Op string

const (
	OpEq       Op = "eq"
	OpContains Op = "contains"
)

// Condition is one predicate of the compiled conjunction. The repository
// renders conditions to SQL; the compiler never sees the storage layer.
type Condition struct {
	Field Field
	Op    Op
	Value any
}

var keywordFolder = cases.Fold()

// Compile translates a filter request into the AND-conjunction of
// predicates for the caller's role. It is a pure function: same inputs,
// same conditions, no shared state.
//
// The ownership predicate comes first and is mutually exclusive by role
// class: investors are pinned to their own inquiries, traders to inquiries
// against their strategies, admins see everything (callerID nil). The
// keyword predicate is added only for a non-blank keyword. Counterpart-name
// targets are role gated: searching by the asker's nickname is an admin
// facility, and searching by the strategy owner's nickname is open to
// investors and admins; for any other caller class the dimension is
// silently dropped, never an error.
func Compile(callerID *int64, role users.Role, f Filter) []Condition {
	var conds []Condition

	switch {
	case role.IsInvestorClass() && callerID != nil:
		conds = append(conds, Condition{Field: FieldAskerID, Op: OpEq, Value: *callerID})
	case role.IsTraderClass() && callerID != nil:
		conds = append(conds, Condition{Field: FieldOwnerID, Op: OpEq, Value: *callerID})
	default:
		// admin-class with a nil caller id: global listing, no ownership
		// restriction
	}

	if keyword := strings.TrimSpace(f.Keyword); keyword != "" {
		keyword = keywordFolder.String(keyword)
		switch f.Target {
		case TargetTitle:
			conds = append(conds, Condition{Field: FieldTitle, Op: OpContains, Value: keyword})
		case TargetContent:
			conds = append(conds, Condition{Field: FieldContent, Op: OpContains, Value: keyword})
		case TargetTitleOrContent:
			conds = append(conds, Condition{Field: FieldTitleOrContent, Op: OpContains, Value: keyword})
		case TargetStrategyName:
			conds = append(conds, Condition{Field: FieldStrategyName, Op: OpContains, Value: keyword})
		case TargetInvestorName:
			if role.IsAdminClass() {
				conds = append(conds, Condition{Field: FieldAskerNickname, Op: OpContains, Value: keyword})
			}
		case TargetTraderName:
			if role.IsInvestorClass() || role.IsAdminClass() {
				conds = append(conds, Condition{Field: FieldOwnerNickname, Op: OpContains, Value: keyword})
			}
		}
	}

	switch f.State {
	case FilterWaiting:
		conds = append(conds, Condition{Field: FieldState, Op: OpEq, Value: StateWaiting})
	case FilterCompleted:
		conds = append(conds, Condition{Field: FieldState, Op: OpEq, Value: StateCompleted})
	}

	return conds
}
