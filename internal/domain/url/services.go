package url

type service struct {
	scheme string
	port   int
}

// services lists the well-known schemes whose default port is omitted
// when a URL is printed.
var services = []service{
	{"http", 80},
	{"https", 443},
	{"ftp", 21},
	{"ssh", 22},
	{"smb", 445},
}

// nonHostSchemes never carry an authority component.
var nonHostSchemes = map[string]struct{}{
	"javascript": {},
	"mailto":     {},
	"tel":        {},
}

// SchemeByPort returns the well-known scheme served on port, or "".
func SchemeByPort(port int) string {
	for _, s := range services {
		if s.port == port {
			return s.scheme
		}
	}
	return ""
}

// PortByScheme returns the default port of scheme, or 0.
func PortByScheme(scheme string) int {
	for _, s := range services {
		if s.scheme == scheme {
			return s.port
		}
	}
	return 0
}

func isNonHostScheme(scheme string) bool {
	_, ok := nonHostSchemes[scheme]
	return ok
}
