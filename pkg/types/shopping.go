// Shopping list item and ingredient transform types.
package types

// ShoppingItem is one line of the live shopping list. Text is normalized
// (trimmed, lower case) and unique within a list. Checked marks the item
// selected for editing; it is never sent to the backend.
type ShoppingItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"-"`
}

// Transform replaces the first occurrence of Key in an ingredient line with
// Replacement.
type Transform struct {
	Key         string `json:"key" yaml:"key" mapstructure:"key"`
	Replacement string `json:"replacement" yaml:"replacement" mapstructure:"replacement"`
}

// TransformTable is an ordered list of transforms, applied in declaration order.
type TransformTable []Transform
