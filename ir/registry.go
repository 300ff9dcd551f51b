package ir

// ResourceRegistry holds the buffers and textures a program declares, each
// with the binding slot the front end assigned. Iteration order is insertion
// order: generated parameter lists must be stable across runs, so the
// registry never reorders or deduplicates behind the caller's back.
type ResourceRegistry struct {
	constantBuffers []ConstantBuffer
	storageBuffers  []StorageBuffer
	textures        []Texture
}

// ConstantBuffer is a read-only uniform buffer binding.
type ConstantBuffer struct {
	Name    string
	Binding uint32
}

// StorageBuffer is a read-write buffer binding. The declared binding is
// renumbered at generation time to keep storage buffers out of the numeric
// range constant buffers occupy.
type StorageBuffer struct {
	Name    string
	Binding uint32
}

// TextureDim is a texture dimensionality tag.
type TextureDim uint8

const (
	Texture1D TextureDim = iota
	Texture2D
	Texture3D
	TextureCube
)

// String returns the MSL texture type name for the dimensionality.
func (d TextureDim) String() string {
	switch d {
	case Texture1D:
		return "texture1d"
	case Texture2D:
		return "texture2d"
	case Texture3D:
		return "texture3d"
	case TextureCube:
		return "texturecube"
	}
	return "texture2d"
}

// Texture is a texture binding. Separate textures carry no bundled sampler;
// non-separate textures pair with a sampler at the same binding slot.
type Texture struct {
	Name     string
	Binding  uint32
	Dim      TextureDim
	Separate bool
}

// AddConstantBuffer registers a constant buffer.
func (r *ResourceRegistry) AddConstantBuffer(name string, binding uint32) {
	r.constantBuffers = append(r.constantBuffers, ConstantBuffer{Name: name, Binding: binding})
}

// AddStorageBuffer registers a storage buffer.
func (r *ResourceRegistry) AddStorageBuffer(name string, binding uint32) {
	r.storageBuffers = append(r.storageBuffers, StorageBuffer{Name: name, Binding: binding})
}

// AddTexture registers a texture.
func (r *ResourceRegistry) AddTexture(tex Texture) {
	r.textures = append(r.textures, tex)
}

// ConstantBuffers returns the registered constant buffers in insertion order.
func (r *ResourceRegistry) ConstantBuffers() []ConstantBuffer {
	return r.constantBuffers
}

// StorageBuffers returns the registered storage buffers in insertion order.
func (r *ResourceRegistry) StorageBuffers() []StorageBuffer {
	return r.storageBuffers
}

// Textures returns the registered textures in insertion order.
func (r *ResourceRegistry) Textures() []Texture {
	return r.textures
}
