package api

import "strconv"

// Paths are relative to the client's base URL, which carries the /api
// prefix of the service (e.g. http://localhost:8080/api).
const (
	LoginEndpoint      = "/login"
	OptionsEndpoint    = "/options"
	UsersEndpoint      = "/users"
	NotesEndpoint      = "/notes"
	StatesEndpoint     = OptionsEndpoint + "/states"
	PrioritiesEndpoint = OptionsEndpoint + "/priorities"
	ColorsEndpoint     = OptionsEndpoint + "/colors"
)

func notePath(id int64) string {
	return NotesEndpoint + "/" + strconv.FormatInt(id, 10)
}

func userPath(id int64) string {
	return UsersEndpoint + "/" + strconv.FormatInt(id, 10)
}
