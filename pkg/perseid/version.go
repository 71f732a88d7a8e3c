package perseid

// Version is the perseid-go release version.
const Version = "v0.1.0"
