package db

import (
	"testing"

	"github.com/arjun/lead-intel/internal/leads"
)

func TestRegionClause(t *testing.T) {
	clause, next := regionClause(leads.CompileFilter(""), "location", 1)
	if clause != "" || next != 1 {
		t.Fatalf("empty filter: clause=%q next=%d", clause, next)
	}

	clause, next = regionClause(leads.CompileFilter("Delhi"), "location", 1)
	if clause != " AND location ILIKE $1" || next != 2 {
		t.Fatalf("got clause=%q next=%d", clause, next)
	}

	clause, next = regionClause(leads.CompileFilter("Delhi"), "state", 3)
	if clause != " AND state ILIKE $3" || next != 4 {
		t.Fatalf("got clause=%q next=%d", clause, next)
	}
}
