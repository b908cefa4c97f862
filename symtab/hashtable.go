package symtab

// DefaultHashSize is the number of buckets of a hash table when no size is
// configured.
const DefaultHashSize = 16

// Entry is a single record of the hash table.
type Entry struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Scope   string `json:"scope"`
	Line    int    `json:"line"`
	Col     int    `json:"column"`
	Address string `json:"memory_address"`
}

// HashTable is a fixed size hash table which resolves collisions by chaining:
// each bucket holds every entry whose name hashes to it in insertion order.
type HashTable struct {
	Buckets [][]*Entry
}

// NewHashTable creates an empty hash table with size buckets.
func NewHashTable(size int) *HashTable {
	if size <= 0 {
		size = DefaultHashSize
	}

	return &HashTable{Buckets: make([][]*Entry, size)}
}

// Hash returns the bucket of name: the sum of its character codes modulo
// size.
func Hash(name string, size int) int {
	sum := 0
	for _, c := range name {
		sum += int(c)
	}

	return sum % size
}

// Size returns the number of buckets.
func (ht *HashTable) Size() int {
	return len(ht.Buckets)
}

// Len returns the number of entries.
func (ht *HashTable) Len() int {
	n := 0
	for _, bucket := range ht.Buckets {
		n += len(bucket)
	}

	return n
}

// Insert appends e to its bucket.
func (ht *HashTable) Insert(e *Entry) {
	i := Hash(e.Name, len(ht.Buckets))
	ht.Buckets[i] = append(ht.Buckets[i], e)
}

// Lookup returns every entry named name in insertion order.
func (ht *HashTable) Lookup(name string) []*Entry {
	var found []*Entry
	for _, e := range ht.Buckets[Hash(name, len(ht.Buckets))] {
		if e.Name == name {
			found = append(found, e)
		}
	}

	return found
}
