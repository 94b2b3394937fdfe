// Package testsupport provides shared fixtures for tests: temp-dir backed
// configurations, catalog store openers, and file writers.
package testsupport
