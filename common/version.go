package common

// HellodVersion is the version of this build of hellod.
// Release builds override it with -ldflags "-X github.com/yext/hellod/common.HellodVersion=..."
var HellodVersion = "1.0.0"
