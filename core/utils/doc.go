// Package utils provides helpers shared by the feature packages: the
// delimited-text encoding of tag sets and lenient integer parsing for
// imported documents and form values.
package utils
