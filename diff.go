package sceneview

import "encoding/json"

// Diff encodes cur relative to prev, a snapshot of the same scene taken
// earlier.
//
// Structurally equal subtrees collapse to a DummyView placeholder carrying
// the model reference and active flag. Composite children are matched to
// previous children by model identity, scanning forward from a cursor that
// rotates past each match, so stable or appended child lists are matched in
// one pass. Unmatched children and children without a model are encoded in
// full. When a model repeats among the previous children the first match
// from the cursor wins.
func (c *Codec) Diff(cur, prev View) Object {
	if prev != nil && cur.Equal(prev) {
		return c.Encode(NewDummy(cur.State().model, cur.State().IsActive()))
	}
	cc, ok := cur.(Container)
	if !ok {
		return c.Encode(cur)
	}
	pc, ok := prev.(Container)
	if !ok || len(pc.Children()) == 0 {
		return c.Encode(cur)
	}

	obj := c.encodeShallow(cur)
	old := pc.Children()
	length := len(old)
	start := 0
	children := make([]Object, 0, len(cc.Children()))
	for _, child := range cc.Children() {
		if !child.State().IsVisible() {
			continue
		}
		model := child.State().model
		if model == nil {
			children = append(children, c.Encode(child))
			continue
		}
		found := false
		i := start
		for {
			o := old[i]
			if o.State().IsVisible() && o.State().model != nil && o.State().model == model {
				children = append(children, c.Diff(child, o))
				start = (i + 1) % length
				found = true
				break
			}
			i = (i + 1) % length
			if i == start {
				break
			}
		}
		if !found {
			children = append(children, c.Encode(child))
		}
	}
	obj["children"] = children
	return obj
}

// DiffJSON is Diff encoded as JSON text. A nil prev yields the full tree.
func (c *Codec) DiffJSON(cur, prev View) ([]byte, error) {
	if cur == nil {
		return nil, ErrNilView
	}
	return json.Marshal(c.Diff(cur, prev))
}
