package bringup

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func presentOn(indices ...int) func(int) (bool, error) {
	return func(index int) (bool, error) {
		for _, i := range indices {
			if i == index {
				return true, nil
			}
		}
		return false, nil
	}
}

func TestFirstQueueFamily(t *testing.T) {
	tests := []struct {
		name      string
		families  []QueueFamily
		present   func(int) (bool, error)
		wantIndex int
		wantFound bool
	}{
		{
			name:     "no families",
			present:  presentOn(),
			families: nil,
		},
		{
			name:      "first family qualifies",
			families:  []QueueFamily{{Graphics: true, QueueCount: 1}, {Graphics: true, QueueCount: 4}},
			present:   presentOn(0, 1),
			wantIndex: 0,
			wantFound: true,
		},
		{
			name:      "skips compute only family",
			families:  []QueueFamily{{Graphics: false, QueueCount: 2}, {Graphics: true, QueueCount: 1}},
			present:   presentOn(0, 1),
			wantIndex: 1,
			wantFound: true,
		},
		{
			name:      "skips family without queues",
			families:  []QueueFamily{{Graphics: true, QueueCount: 0}, {Graphics: true, QueueCount: 1}},
			present:   presentOn(0, 1),
			wantIndex: 1,
			wantFound: true,
		},
		{
			name:      "skips family that cannot present",
			families:  []QueueFamily{{Graphics: true, QueueCount: 16}, {Graphics: true, QueueCount: 2}},
			present:   presentOn(1),
			wantIndex: 1,
			wantFound: true,
		},
		{
			name:     "graphics and present on different families",
			families: []QueueFamily{{Graphics: true, QueueCount: 1}, {Graphics: false, QueueCount: 1}},
			present:  presentOn(1),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			index, found, err := firstQueueFamily(test.families, test.present)
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			if found != test.wantFound {
				t.Fatalf("found = %v, want %v", found, test.wantFound)
			}
			if found && index != test.wantIndex {
				t.Errorf("index = %d, want %d", index, test.wantIndex)
			}
		})
	}
}

func TestFirstQueueFamilyPropagatesPresentError(t *testing.T) {
	queryErr := errors.New("surface lost")
	_, found, err := firstQueueFamily([]QueueFamily{{Graphics: true, QueueCount: 1}}, func(int) (bool, error) {
		return false, queryErr
	})

	if found {
		t.Error("expected no family on error")
	}
	if !errors.Is(err, queryErr) {
		t.Errorf("expected %v, got %v", queryErr, err)
	}
}

func TestFirstQueueFamilyOnlyQueriesEligibleFamilies(t *testing.T) {
	var queried []int
	_, _, err := firstQueueFamily([]QueueFamily{{Graphics: false, QueueCount: 1}, {Graphics: true, QueueCount: 0}}, func(index int) (bool, error) {
		queried = append(queried, index)
		return true, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if len(queried) != 0 {
		t.Errorf("present support queried for ineligible families %v", queried)
	}
}
