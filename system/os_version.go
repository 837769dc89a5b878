package system

import (
	"errors"
	"os"
	"regexp"

	"github.com/blang/semver/v4"
)

const releaseFilePath = "/etc/os-release"

// This regex will parse VERSION_ID=1.2 or VERSION_ID="1.2.3" just as easily
var reExtractVersionID = regexp.MustCompile(`VERSION_ID=['"]?([^'"\s]*)`)

// ReadOSVersion reads `releaseFilePath` and parses VERSION_ID into a `Version` struct
func ReadOSVersion() (imgRelease semver.Version, err error) {
	data, err := os.ReadFile(releaseFilePath)
	if err != nil {
		return
	}

	imgRelease, err = parseVersion(data)
	return
}

func parseVersion(releaseFile []byte) (ver semver.Version, err error) {
	versionInfo := reExtractVersionID.FindSubmatch(releaseFile)
	if versionInfo == nil {
		err = errors.New("VERSION_ID not found in version file")
		return
	}
	return semver.ParseTolerant(string(versionInfo[1]))
}
