package fieldprint

// Version is the release of the fieldprint module.
var Version = "0.3.0"
