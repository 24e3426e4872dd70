package model

import "testing"

func TestEventRecordInvolves(t *testing.T) {
	rec := EventRecord{
		Name:     "Staked",
		Accounts: []string{"0xAbCdEf0000000000000000000000000000000001"},
	}

	if !rec.Involves("0xabcdef0000000000000000000000000000000001") {
		t.Fatalf("expected case-insensitive match")
	}
	if rec.Involves("0x0000000000000000000000000000000000000002") {
		t.Fatalf("unexpected match for unrelated account")
	}
	if rec.Involves("") {
		t.Fatalf("empty account must not match")
	}
}

func TestProposalActive(t *testing.T) {
	p := Proposal{StartTime: 100, EndTime: 200}
	if p.Active(99) {
		t.Fatalf("not started yet")
	}
	if !p.Active(150) {
		t.Fatalf("expected active")
	}
	if p.Active(200) {
		t.Fatalf("ended")
	}
	p.VotingClosed = true
	if p.Active(150) {
		t.Fatalf("closed proposals are inactive")
	}
}
