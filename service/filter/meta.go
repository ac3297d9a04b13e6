package filter

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

// Meta returns a ByResource filter that stamps the "meta" complex attribute:
// created/lastModified timestamps, location and a weak version tag. Grounded on
// pkg/v2/service/filter/meta.go's metaFilter, adapted from Navigator.Dot traversal to this
// module's Container.Get.
func Meta(descriptor *spec.ResourceDescriptor) ByResource {
	return metaFilter{descriptor: descriptor}
}

type metaFilter struct {
	descriptor *spec.ResourceDescriptor
}

func (f metaFilter) Filter(_ context.Context, resource *prop.Resource) error {
	meta, ok := resource.Get("meta").(prop.Container)
	if !ok {
		return fmt.Errorf("%w: resource has no meta attribute", spec.ErrInternal)
	}

	now := time.Now().UTC().Format(spec.ISO8601)
	if err := meta.Get("created").Replace(now); err != nil {
		return err
	}
	if err := meta.Get("lastModified").Replace(now); err != nil {
		return err
	}
	if err := f.assignLocation(resource, meta); err != nil {
		return err
	}
	return f.assignVersion(resource, meta)
}

func (f metaFilter) FilterRef(_ context.Context, resource *prop.Resource, _ *prop.Resource) error {
	meta, ok := resource.Get("meta").(prop.Container)
	if !ok {
		return fmt.Errorf("%w: resource has no meta attribute", spec.ErrInternal)
	}

	if err := meta.Get("lastModified").Replace(time.Now().UTC().Format(spec.ISO8601)); err != nil {
		return err
	}
	return f.assignVersion(resource, meta)
}

func (f metaFilter) assignLocation(resource *prop.Resource, meta prop.Container) error {
	id := resource.ID()
	if id == "" {
		return fmt.Errorf("%w: empty id", spec.ErrInternal)
	}
	location := strings.TrimSuffix(f.descriptor.Endpoint, "/") + "/" + id
	return meta.Get("location").Replace(location)
}

// assignVersion derives a weak ETag from the resource id and a random salt, mirroring
// pkg/v2/service/filter/meta.go's assignNewVersion (sha1 over id + random bytes).
func (f metaFilter) assignVersion(resource *prop.Resource, meta prop.Container) error {
	id := resource.ID()
	if id == "" {
		return fmt.Errorf("%w: empty id", spec.ErrInternal)
	}

	salt := make([]byte, 8)
	binary.LittleEndian.PutUint64(salt, rand.Uint64())

	h := sha1.New()
	h.Write([]byte(id))
	h.Write(salt)

	return meta.Get("version").Replace(fmt.Sprintf("W/%q", h.Sum(nil)))
}
