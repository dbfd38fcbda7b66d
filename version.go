package slidefactory

// Version is the slidefactory release. The remote theme stylesheet is pinned
// to it and it is stamped into every PDF as the creator.
const Version = "3.4.0"

// Versions of the bundled third-party libraries. The local copies live under
// the installation root in directories carrying these versions.
const (
	RevealJSVersion = "4.4.0"
	MathJaxVersion  = "3.2.2"
)
