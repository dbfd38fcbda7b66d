package assets

// IndexTemplate is the name of the pages landing page template.
const IndexTemplate = "index"

// CSCUIVersion pins the web component library the index template loads.
const CSCUIVersion = "2.1.11"
