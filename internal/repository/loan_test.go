package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnavailableDeltas(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		orig loanState
		upd  loanState
		want []counterDelta
	}{
		{
			name: "same copy, still open",
			orig: loanState{bookItemID: 1, open: true},
			upd:  loanState{bookItemID: 1, open: true},
			want: nil,
		},
		{
			name: "same copy, still returned",
			orig: loanState{bookItemID: 1, open: false},
			upd:  loanState{bookItemID: 1, open: false},
			want: nil,
		},
		{
			name: "same copy, returned",
			orig: loanState{bookItemID: 1, open: true},
			upd:  loanState{bookItemID: 1, open: false},
			want: []counterDelta{{bookItemID: 1, delta: -1}},
		},
		{
			name: "same copy, reopened",
			orig: loanState{bookItemID: 1, open: false},
			upd:  loanState{bookItemID: 1, open: true},
			want: []counterDelta{{bookItemID: 1, delta: 1}},
		},
		{
			name: "moved copy, open on both sides",
			orig: loanState{bookItemID: 1, open: true},
			upd:  loanState{bookItemID: 2, open: true},
			want: []counterDelta{
				{bookItemID: 1, delta: -1},
				{bookItemID: 2, delta: 1},
			},
		},
		{
			name: "moved copy, returned on both sides",
			orig: loanState{bookItemID: 1, open: false},
			upd:  loanState{bookItemID: 2, open: false},
			want: nil,
		},
		{
			name: "moved copy and returned",
			orig: loanState{bookItemID: 1, open: true},
			upd:  loanState{bookItemID: 2, open: false},
			want: []counterDelta{{bookItemID: 1, delta: -1}},
		},
		{
			name: "moved copy and reopened",
			orig: loanState{bookItemID: 1, open: false},
			upd:  loanState{bookItemID: 2, open: true},
			want: []counterDelta{{bookItemID: 2, delta: 1}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, unavailableDeltas(tt.orig, tt.upd))
		})
	}
}
