// Package junit renders a report as a JUnit-style XML document so CI
// servers can attach the measurement to the pipeline's test results.
package junit

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"scaph2cc/internal/report"
)

// TestSuites is the document root.
type TestSuites struct {
	XMLName xml.Name    `xml:"testsuites"`
	Suites  []TestSuite `xml:"testsuite"`
}

// TestSuite groups the cases of one application.
type TestSuite struct {
	Name     string     `xml:"name,attr"`
	Tests    int        `xml:"tests,attr"`
	Failures int        `xml:"failures,attr"`
	Errors   int        `xml:"errors,attr"`
	Cases    []TestCase `xml:"testcase"`
}

// TestCase is one passing measurement.
type TestCase struct {
	Name      string `xml:"name,attr"`
	ClassName string `xml:"classname,attr"`
	SystemOut string `xml:"system-out"`
}

// Build creates a document with one suite named by the application id and
// one passing case named by the commit SHA. The case output is a debug dump
// of the report.
func Build(r report.Result) TestSuites {
	return TestSuites{
		Suites: []TestSuite{
			{
				Name:  r.AppID,
				Tests: 1,
				Cases: []TestCase{
					{
						Name:      r.CommitSHA,
						ClassName: r.AppID,
						SystemOut: fmt.Sprintf("%+v", r),
					},
				},
			},
		},
	}
}

// ToXML serializes the document with the XML header.
func (s TestSuites) ToXML() ([]byte, error) {
	body, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	out := []byte(xml.Header)
	out = append(out, body...)
	return append(out, '\n'), nil
}

// WriteToFile writes the document to path, creating parent directories if needed.
func (s TestSuites) WriteToFile(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := s.ToXML()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
