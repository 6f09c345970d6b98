package filter

import (
	"strings"
	"testing"

	"bundledit/internal/store"
	"bundledit/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableFrom(t *testing.T, csv string) *store.Table {
	t.Helper()
	table, err := store.Load(strings.NewReader(csv))
	require.NoError(t, err)
	return table
}

func TestApply(t *testing.T) {
	table := tableFrom(t, `index,file_type,source_text,translated_text
0,dialogue,Hello,Привет
1,menu,Settings,
2,Dialogue,The Crest of Flames,
3,menu,Quit,Выход
`)

	tests := []struct {
		name      string
		predicate types.Predicate
		want      []int
	}{
		{
			name:      "no conditions matches all",
			predicate: types.Predicate{},
			want:      []int{0, 1, 2, 3},
		},
		{
			name:      "ALL sentinel disables type condition",
			predicate: types.Predicate{FileType: "ALL"},
			want:      []int{0, 1, 2, 3},
		},
		{
			name:      "type equality is case-insensitive",
			predicate: types.Predicate{FileType: "dialogue"},
			want:      []int{0, 2},
		},
		{
			name:      "type is equality not substring",
			predicate: types.Predicate{FileType: "dial"},
			want:      []int{},
		},
		{
			name:      "text matches source case-insensitively",
			predicate: types.Predicate{Text: "crest"},
			want:      []int{2},
		},
		{
			name:      "text matches translation too",
			predicate: types.Predicate{Text: "выход"},
			want:      []int{3},
		},
		{
			name:      "untranslated only",
			predicate: types.Predicate{UntranslatedOnly: true},
			want:      []int{1, 2},
		},
		{
			name: "conditions combine",
			predicate: types.Predicate{
				FileType:         "menu",
				UntranslatedOnly: true,
			},
			want: []int{1},
		},
		{
			name:      "nothing matches",
			predicate: types.Predicate{Text: "no such text"},
			want:      []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(table, tt.predicate)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyOrderStable(t *testing.T) {
	table := tableFrom(t, `index,file_type,source_text,translated_text
0,a,x,
1,b,x,
2,a,x,
3,b,x,
`)

	positions := Apply(table, types.Predicate{Text: "x"})
	for i := 1; i < len(positions); i++ {
		assert.Greater(t, positions[i], positions[i-1])
	}
}

func TestStatsUntranslatedRow(t *testing.T) {
	table := tableFrom(t, `index,file_type,source_text,translated_text
0,dialogue,Hello,
`)

	positions := Apply(table, types.Predicate{UntranslatedOnly: true})
	assert.Equal(t, []int{0}, positions)
	assert.Equal(t, types.Stats{Total: 1, Untranslated: 1, Percent: 0}, Stats(table))

	require.NoError(t, table.SetTranslation(0, "Привет"))

	positions = Apply(table, types.Predicate{UntranslatedOnly: true})
	assert.Empty(t, positions)
	assert.Equal(t, types.Stats{Total: 1, Untranslated: 0, Percent: 100}, Stats(table))
}

func TestStatsIgnoresFilter(t *testing.T) {
	table := tableFrom(t, `index,file_type,source_text,translated_text
0,dialogue,Hello,Привет
1,menu,Settings,
2,menu,Quit,
`)

	// Stats cover the whole table no matter what the view shows.
	assert.Equal(t, types.Stats{Total: 3, Untranslated: 2, Percent: 33}, Stats(table))
}

func TestStatsPercentFloors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		percent int
	}{
		{
			name:    "empty table",
			csv:     "index,file_type,source_text,translated_text\n",
			percent: 0,
		},
		{
			name: "two of three floors to 66",
			csv: `index,file_type,source_text,translated_text
0,a,x,y
1,a,x,y
2,a,x,
`,
			percent: 66,
		},
		{
			name: "all translated",
			csv: `index,file_type,source_text,translated_text
0,a,x,y
`,
			percent: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := tableFrom(t, tt.csv)
			assert.Equal(t, tt.percent, Stats(table).Percent)
		})
	}
}

func TestFileTypes(t *testing.T) {
	table := tableFrom(t, `index,file_type,source_text,translated_text
0,menu,x,
1,dialogue,x,
2,Menu,x,
3,system,x,
`)

	// First appearance order, case-insensitive dedupe.
	assert.Equal(t, []string{"menu", "dialogue", "system"}, FileTypes(table))
}
