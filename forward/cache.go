package forward

// SavedMessages is the fixed capacity of the seen-message cache.
const SavedMessages = 32

// Cache is a fixed-size open-addressed table of decoded messages, keyed by
// hash_id mod SavedMessages with linear-probe collision resolution. At most
// one entry exists per (hash_id, sender, timestamp, split_no) quadruple.
type Cache struct {
	slots [SavedMessages]*Message
}

func slotFor(hashID uint16) int {
	return int(hashID) % SavedMessages
}

// Find returns the cached entry matching m per compare_messages, probing
// linearly from m's primary slot across the whole table.
func (c *Cache) Find(m *Message) (*Message, int, bool) {
	start := slotFor(m.HashID)
	for i := 0; i < SavedMessages; i++ {
		idx := (start + i) % SavedMessages
		e := c.slots[idx]
		if e == nil {
			continue
		}
		if e.sameAs(m) {
			return e, idx, true
		}
	}
	return nil, -1, false
}

// Add inserts m into the first free slot found by linear probing from its
// primary slot. Adding a message that Find already matches is a no-op that
// reports true. It reports false if the table is full.
func (c *Cache) Add(m *Message) bool {
	if _, _, found := c.Find(m); found {
		return true
	}
	start := slotFor(m.HashID)
	for i := 0; i < SavedMessages; i++ {
		idx := (start + i) % SavedMessages
		if c.slots[idx] == nil {
			c.slots[idx] = m
			return true
		}
	}
	return false
}

// Remove frees the slot at idx, if occupied.
func (c *Cache) Remove(idx int) {
	if idx < 0 || idx >= SavedMessages {
		return
	}
	c.slots[idx] = nil
}

// Group returns every cached entry sharing the given split_ref/split_parts
// pair, in no particular order; used for multipart reassembly.
func (c *Cache) Group(splitRef byte, splitParts int) []*Message {
	var group []*Message
	for _, e := range c.slots {
		if e == nil {
			continue
		}
		if e.SplitRef == splitRef && e.SplitParts == splitParts {
			group = append(group, e)
		}
	}
	return group
}

// Entries returns every occupied slot, in table order.
func (c *Cache) Entries() []*Message {
	var entries []*Message
	for _, e := range c.slots {
		if e != nil {
			entries = append(entries, e)
		}
	}
	return entries
}

// Len reports how many slots are occupied.
func (c *Cache) Len() int {
	n := 0
	for _, e := range c.slots {
		if e != nil {
			n++
		}
	}
	return n
}
