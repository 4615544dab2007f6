package version

import (
	"fmt"
	"io"
)

type License struct {
	ModuleName  string
	LicenseName string
	Link        string
}

var Licenses = []License{
	{
		ModuleName:  "jsonhttp",
		LicenseName: "MIT License",
		Link:        "https://github.com/nojima/jsonhttp/blob/master/LICENSE",
	},
	{
		ModuleName:  "Go",
		LicenseName: "BSD License",
		Link:        "https://golang.org/LICENSE",
	},
	{
		ModuleName:  "aurora",
		LicenseName: "WTFPL",
		Link:        "https://github.com/logrusorgru/aurora/blob/master/LICENSE",
	},
	{
		ModuleName:  "go-isatty",
		LicenseName: "MIT License",
		Link:        "https://github.com/mattn/go-isatty/blob/master/LICENSE",
	},
	{
		ModuleName:  "getopt",
		LicenseName: "BSD License",
		Link:        "https://github.com/pborman/getopt/blob/master/LICENSE",
	},
	{
		ModuleName:  "errors",
		LicenseName: "BSD License",
		Link:        "https://github.com/pkg/errors/blob/master/LICENSE",
	},
	{
		ModuleName:  "bytefmt",
		LicenseName: "Apache License",
		Link:        "https://github.com/cloudfoundry/bytefmt/blob/master/LICENSE",
	},
	{
		ModuleName:  "go-ntlmssp",
		LicenseName: "MIT License",
		Link:        "https://github.com/Azure/go-ntlmssp/blob/master/LICENSE",
	},
	{
		ModuleName:  "zap",
		LicenseName: "MIT License",
		Link:        "https://github.com/uber-go/zap/blob/master/LICENSE",
	},
	{
		ModuleName:  "viper",
		LicenseName: "MIT License",
		Link:        "https://github.com/spf13/viper/blob/master/LICENSE",
	},
	{
		ModuleName:  "godotenv",
		LicenseName: "MIT License",
		Link:        "https://github.com/joho/godotenv/blob/main/LICENCE",
	},
	{
		ModuleName:  "androiddnsfix",
		LicenseName: "MIT License",
		Link:        "https://github.com/mtibben/androiddnsfix/blob/master/LICENSE",
	},
	{
		ModuleName:  "golang.org/x/text, golang.org/x/crypto",
		LicenseName: "BSD License",
		Link:        "https://golang.org/LICENSE",
	},
}

func PrintLicenses(w io.Writer) {
	for _, license := range Licenses {
		fmt.Fprintf(w, "%s:\n  %s\n  %s\n\n",
			license.ModuleName,
			license.LicenseName,
			license.Link,
		)
	}
}
