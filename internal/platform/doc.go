// Package platform provides the filesystems generation writes through. Real
// runs write to the OS filesystem. Dry runs read the OS filesystem but keep
// every write in memory, so the rest of the pipeline runs unchanged.
package platform
