package log

const (
	// FldFile is the name of the log field for storing file name information
	FldFile = "file"
	// FldPath is the name of the log field for storing path name information
	FldPath = "path"
	// FldTransport is the name of the log field for storing a transport name
	FldTransport = "transport"
	// FldVersion is the version number of the application
	FldVersion = "ver"
	// FldID is the ID of an entity used in the log entry
	FldID = "id"
	// FldSearch is a search term used in a search
	FldSearch = "search"
	// FldVenue is the ID of the venue an operation works on
	FldVenue = "venue"
	// FldArtist is the ID of the artist an operation works on
	FldArtist = "artist"
	// FldEndpoint is the name of the endpoint handling the current call
	FldEndpoint = "endpoint"
	// FldDuration is the time it took to handle a call
	FldDuration = "took"
	// FldMethod is the HTTP method of an incoming request
	FldMethod = "method"
)
