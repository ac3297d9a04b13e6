package ldap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMappingAttributeLookupIsCaseInsensitive(t *testing.T) {
	m := userMapping()
	assert.NotNil(t, m.Attribute("userName"))
	assert.NotNil(t, m.Attribute("USERNAME"))
	assert.Nil(t, m.Attribute("nickName"))
}

func TestMappingIDAttributeDefault(t *testing.T) {
	m := &Mapping{}
	assert.Equal(t, "entryUUID", m.idAttribute())

	m.IDAttribute = "uid"
	assert.Equal(t, "uid", m.idAttribute())
}
