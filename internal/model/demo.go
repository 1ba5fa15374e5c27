package model

// DemoNurses is the roster used by the mock client and by the stub backend's --seed.
func DemoNurses() []Nurse {
	return []Nurse{
		{ID: 1, Name: "Alice", Surname: "Johnson", Email: "alice.johnson@fatfox.com", Username: "alice.j", Password: "pass123", Profile: []byte{0}},
		{ID: 2, Name: "Alina", Surname: "Kovacs", Email: "alina.kovacs@fatfox.com", Username: "alina.k", Password: "qwerty", Profile: []byte{1}},
		{ID: 3, Name: "Bob", Surname: "Smith", Email: "bob.smith@fatfox.com", Username: "bob.s", Password: "abc123", Profile: []byte{2}},
		{ID: 4, Name: "Charlie", Surname: "Brown", Email: "charlie.brown@fatfox.com", Username: "charlie.b", Password: "password123", Profile: []byte{1}},
		{ID: 5, Name: "David", Surname: "Lee", Email: "david.lee@fatfox.com", Username: "david.l", Password: "letmein", Profile: []byte{5}},
		{ID: 6, Name: "Emma", Surname: "Wilson", Email: "emma.wilson@fatfox.com", Username: "emma.w", Password: "secure456", Profile: []byte{4}},
		{ID: 7, Name: "Fiona", Surname: "Garcia", Email: "fiona.garcia@fatfox.com", Username: "fiona.g", Password: "medical789", Profile: []byte{4}},
		{ID: 8, Name: "George", Surname: "Miller", Email: "george.miller@fatfox.com", Username: "george.m", Password: "hospital321", Profile: []byte{0}},
	}
}
