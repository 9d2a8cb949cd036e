package domain

import (
	"encoding/json"
	"fmt"
)

// ID identifies a Contact. It is minted once by an IDGenerator and never changes.
type ID string

// Contact is the entity listed on the screen.
type Contact struct {
	ID   ID     `json:"id" yaml:"id" mapstructure:"id"`
	Name string `json:"name" yaml:"name" mapstructure:"name"`
}

// Contacts is an insertion-ordered collection of Contacts keyed by ID.
// The zero value is an empty collection ready to use.
type Contacts struct {
	items []Contact
	index map[ID]int
}

// NewContacts builds a collection from the given contacts, in order.
// Later duplicates overwrite earlier ones in place.
func NewContacts(contacts ...Contact) Contacts {
	var c Contacts
	for _, contact := range contacts {
		c.Append(contact)
	}
	return c
}

// Len returns the number of contacts.
func (c Contacts) Len() int {
	return len(c.items)
}

// Get returns the contact with the given id.
func (c Contacts) Get(id ID) (Contact, bool) {
	i, ok := c.index[id]
	if !ok {
		return Contact{}, false
	}
	return c.items[i], true
}

// Has reports whether a contact with the given id exists.
func (c Contacts) Has(id ID) bool {
	_, ok := c.index[id]
	return ok
}

// At returns the contact at display position i.
func (c Contacts) At(i int) (Contact, bool) {
	if i < 0 || i >= len(c.items) {
		return Contact{}, false
	}
	return c.items[i], true
}

// Append adds a contact at the end of the collection.
// If the id is already present the existing entry is overwritten in place,
// keeping its display position.
func (c *Contacts) Append(contact Contact) {
	if c.index == nil {
		c.index = make(map[ID]int)
	}
	if i, ok := c.index[contact.ID]; ok {
		c.items[i] = contact
		return
	}
	c.index[contact.ID] = len(c.items)
	c.items = append(c.items, contact)
}

// Remove deletes the contact with the given id. Removing an absent id is a no-op.
// It reports whether anything was removed.
func (c *Contacts) Remove(id ID) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].ID] = j
	}
	return true
}

// All returns a copy of the contacts in display order.
func (c Contacts) All() []Contact {
	out := make([]Contact, len(c.items))
	copy(out, c.items)
	return out
}

// IDs returns the ids in display order.
func (c Contacts) IDs() []ID {
	ids := make([]ID, len(c.items))
	for i, item := range c.items {
		ids[i] = item.ID
	}
	return ids
}

// Clone returns an independent copy of the collection.
func (c Contacts) Clone() Contacts {
	return NewContacts(c.items...)
}

// MarshalJSON encodes the collection as an ordered array.
func (c Contacts) MarshalJSON() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []Contact{}
	}
	return json.Marshal(items)
}

// UnmarshalJSON decodes an ordered array, rejecting duplicate ids.
func (c *Contacts) UnmarshalJSON(data []byte) error {
	var items []Contact
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	next := Contacts{}
	for _, item := range items {
		if next.Has(item.ID) {
			return fmt.Errorf("duplicate contact id %q", item.ID)
		}
		next.Append(item)
	}
	*c = next
	return nil
}
