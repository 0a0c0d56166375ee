package leveldb

// Version identifies this build of the binding.
const Version = "0.1.0"
