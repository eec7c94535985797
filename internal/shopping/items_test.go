package shopping

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func items(texts ...string) []types.ShoppingItem {
	out := make([]types.ShoppingItem, 0, len(texts))
	for _, t := range texts {
		out = append(out, NewItem(t))
	}
	return out
}

func TestAddItemsScenarioB(t *testing.T) {
	current := items("milk", "eggs")
	got := AddItems(current, []string{"Milk", " Bread "}, Tail)

	if diff := cmp.Diff([]string{"milk", "eggs", "bread"}, Texts(got)); diff != "" {
		t.Fatalf("AddItems mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, current, 2, "input slice is not modified")
}

func TestAddItemsPositions(t *testing.T) {
	current := items("milk", "eggs")

	tests := []struct {
		name  string
		texts []string
		pos   Position
		want  []string
	}{
		{"tail keeps order", []string{"bread", "jam"}, Tail, []string{"milk", "eggs", "bread", "jam"}},
		{"head keeps order", []string{"bread", "jam"}, Head, []string{"bread", "jam", "milk", "eggs"}},
		{"blank entries dropped", []string{"", "  ", "jam"}, Tail, []string{"milk", "eggs", "jam"}},
		{"repeats within input dropped", []string{"Jam", "jam "}, Tail, []string{"milk", "eggs", "jam"}},
		{"nothing new", []string{"EGGS"}, Head, []string{"milk", "eggs"}},
		{"cut before a comma", []string{"Jam, apricot"}, Tail, []string{"milk", "eggs", "jam"}},
		{"comma remainder matches existing", []string{"eggs, beaten"}, Tail, []string{"milk", "eggs"}},
		{"only a comma", []string{", x"}, Tail, []string{"milk", "eggs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddItems(current, tt.texts, tt.pos)
			assert.Equal(t, tt.want, Texts(got))
		})
	}
}

func TestAddItemsAssignsUniqueIDs(t *testing.T) {
	got := AddItems(nil, []string{"a", "b", "c"}, Tail)
	seen := map[string]bool{}
	for _, it := range got {
		require.NotEmpty(t, it.ID)
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
}

func TestAddSingleItem(t *testing.T) {
	current := items("milk")

	got, err := AddSingleItem(current, "Bread", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"bread", "milk"}, Texts(got))

	got, err = AddSingleItem(current, "bread", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"milk", "bread"}, Texts(got))

	got, err = AddSingleItem(current, " MILK ", true)
	assert.ErrorIs(t, err, types.ErrDuplicateItem)
	assert.Equal(t, []string{"milk"}, Texts(got))

	_, err = AddSingleItem(current, "  ", true)
	assert.ErrorIs(t, err, types.ErrEmptyItem)
}

func TestEditItem(t *testing.T) {
	current := items("milk", "eggs", "bread")
	eggs := current[1]

	got, err := EditItem(current, eggs.ID, "Free Range Eggs")
	require.NoError(t, err)
	assert.Equal(t, []string{"milk", "free range eggs", "bread"}, Texts(got))
	assert.Equal(t, eggs.ID, got[1].ID, "edit keeps the id")
	assert.Equal(t, "eggs", current[1].Text, "input slice is not modified")

	_, err = EditItem(current, eggs.ID, "MILK")
	assert.ErrorIs(t, err, types.ErrDuplicateItem)

	got, err = EditItem(current, eggs.ID, "EGGS")
	require.NoError(t, err, "editing to its own text is allowed")
	assert.Equal(t, "eggs", got[1].Text)

	_, err = EditItem(current, "missing", "x")
	assert.ErrorIs(t, err, types.ErrItemNotFound)

	_, err = EditItem(current, eggs.ID, " ")
	assert.ErrorIs(t, err, types.ErrEmptyItem)
}

func TestRemoveItem(t *testing.T) {
	current := items("milk", "eggs", "bread")

	got, err := RemoveItem(current, current[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"milk", "bread"}, Texts(got))

	_, err = RemoveItem(current, "missing")
	assert.ErrorIs(t, err, types.ErrItemNotFound)
}

func TestMoveItem(t *testing.T) {
	current := items("a", "b", "c", "d")

	tests := []struct {
		name  string
		from  int
		index int
		want  []string
	}{
		{"to front", 2, 0, []string{"c", "a", "b", "d"}},
		{"to back", 0, 3, []string{"b", "c", "d", "a"}},
		{"clamped high", 1, 99, []string{"a", "c", "d", "b"}},
		{"clamped low", 3, -5, []string{"d", "a", "b", "c"}},
		{"same place", 1, 1, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MoveItem(current, current[tt.from].ID, tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Texts(got))
		})
	}

	_, err := MoveItem(current, "missing", 0)
	assert.ErrorIs(t, err, types.ErrItemNotFound)
}

func TestParseAndJoinList(t *testing.T) {
	assert.Nil(t, ParseList(""))
	assert.Nil(t, ParseList("   "))
	assert.Equal(t, []string{"milk", "eggs"}, ParseList(" milk,, eggs ,"))
	assert.Equal(t, "milk,eggs", JoinList([]string{"milk", "eggs"}))
	assert.Equal(t, "", JoinList(nil))
}

// The list never holds two items with the same normalized text, whatever
// sequence of additions, edits and removals produced it.
func TestItemsSurviveListRoundTrip(t *testing.T) {
	list, err := AddSingleItem(items("milk"), "Eggs, beaten", true)
	require.NoError(t, err)
	list, err = EditItem(list, list[1].ID, "oat milk, unsweetened")
	require.NoError(t, err)

	want := []string{"eggs", "oat milk"}
	assert.Equal(t, want, Texts(list))
	assert.Equal(t, want, ParseList(JoinList(Texts(list))))

	_, err = AddSingleItem(list, "EGGS, large", false)
	assert.ErrorIs(t, err, types.ErrDuplicateItem)
}

func TestItemsNeverDuplicate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.SampledFrom([]string{"milk", "Milk", " eggs", "EGGS ", "bread", "", "jam", "Jam"})
		var list []types.ShoppingItem

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				texts := rapid.SliceOfN(word, 0, 5).Draw(t, "texts")
				pos := Position(rapid.IntRange(0, 1).Draw(t, "pos"))
				list = AddItems(list, texts, pos)
			case 1:
				list, _ = AddSingleItem(list, word.Draw(t, "text"), rapid.Bool().Draw(t, "prepend"))
			case 2:
				if len(list) > 0 {
					idx := rapid.IntRange(0, len(list)-1).Draw(t, "edit")
					list, _ = EditItem(list, list[idx].ID, word.Draw(t, "newText"))
				}
			case 3:
				if len(list) > 0 {
					idx := rapid.IntRange(0, len(list)-1).Draw(t, "remove")
					list, _ = RemoveItem(list, list[idx].ID)
				}
			}

			seen := map[string]bool{}
			for _, it := range list {
				n := types.Normalize(it.Text)
				if seen[n] {
					t.Fatalf("duplicate item %q in %v", n, Texts(list))
				}
				if n == "" {
					t.Fatalf("blank item in %v", Texts(list))
				}
				seen[n] = true
			}
		}
	})
}
