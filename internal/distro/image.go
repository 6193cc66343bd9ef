// Package distro catalogs the bakerx base images v knows how to pull.
package distro

import "fmt"

// ID identifies a base image by the name bakerx stores it under.
type ID string

const (
	Bionic ID = "bionic"
	Focal  ID = "focal"
	Jammy  ID = "jammy"
	Noble  ID = "noble"
)

// Image describes where bakerx fetches a base image from.
type Image struct {
	ID ID

	// Name is the human-readable release name.
	Name string

	// Source is the bakerx pull source.
	Source string
}

// PullCommand returns the bakerx invocation that downloads the image.
func (i Image) PullCommand() string {
	return fmt.Sprintf("bakerx pull %s %s", i.Source, i.ID)
}

func init() {
	for _, img := range []Image{
		{ID: Bionic, Name: "Ubuntu 18.04 LTS", Source: ubuntuCloudImages},
		{ID: Focal, Name: "Ubuntu 20.04 LTS", Source: ubuntuCloudImages},
		{ID: Jammy, Name: "Ubuntu 22.04 LTS", Source: ubuntuCloudImages},
		{ID: Noble, Name: "Ubuntu 24.04 LTS", Source: ubuntuCloudImages},
	} {
		Register(img)
	}
}

const ubuntuCloudImages = "cloud-images.ubuntu.com"

// PullHint returns how to download the image stored under id. Unknown
// ids are assumed to come from the Ubuntu cloud image mirror.
func PullHint(id string) string {
	img, err := Get(ID(id))
	if err != nil {
		img = Image{ID: ID(id), Source: ubuntuCloudImages}
	}
	return img.PullCommand()
}
