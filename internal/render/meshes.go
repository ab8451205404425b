package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// meshSet holds the unit cube and unit plane with a lit material and a lit-textured
// material. Created lazily on first draw so GPU resources exist only after the window.
type meshSet struct {
	ready       bool
	cube        rl.Mesh
	plane       rl.Mesh
	mtl         rl.Material
	texturedMtl rl.Material
	viewPos     [3]float32
	lightDir    [3]float32
}

func newMeshSet() *meshSet {
	return &meshSet{lightDir: [3]float32{0.3, 1, 0.6}}
}

func (m *meshSet) ensure() {
	if m.ready {
		return
	}
	m.cube = rl.GenMeshCube(1, 1, 1)
	// Raylib planes lie in XZ facing +Y; pictures rotate them upright at draw time.
	m.plane = rl.GenMeshPlane(1, 1, 1, 1)
	m.mtl = rl.LoadMaterialDefault()
	if s := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(s) {
		m.mtl.Shader = s
	}
	m.texturedMtl = rl.LoadMaterialDefault()
	if s := rl.LoadShaderFromMemory(litVS, litTexturedFS); rl.IsShaderValid(s) {
		m.texturedMtl.Shader = s
	}
	m.ready = true
}

// setView sets the camera position used for specular highlights this frame.
func (m *meshSet) setView(viewPos [3]float32) {
	m.viewPos = viewPos
}

// box draws a solid box at transform with the given albedo color.
func (m *meshSet) box(transform rl.Matrix, col rl.Color) {
	m.ensure()
	if albedo := m.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = col
	}
	m.setUniforms(m.mtl.Shader)
	rl.DrawMesh(m.cube, m.mtl, transform)
}

// quad draws the unit plane at transform, textured when tex is valid.
func (m *meshSet) quad(transform rl.Matrix, tex rl.Texture2D, tint rl.Color) {
	m.ensure()
	if !rl.IsTextureValid(tex) {
		if albedo := m.mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = tint
		}
		m.setUniforms(m.mtl.Shader)
		rl.DrawMesh(m.plane, m.mtl, transform)
		return
	}
	rl.SetMaterialTexture(&m.texturedMtl, rl.MapAlbedo, tex)
	if albedo := m.texturedMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	m.setUniforms(m.texturedMtl.Shader)
	rl.DrawMesh(m.plane, m.texturedMtl, transform)
}

func (m *meshSet) unload() {
	if !m.ready {
		return
	}
	rl.UnloadMesh(&m.cube)
	rl.UnloadMesh(&m.plane)
	m.ready = false
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = abs(dot(N, L));
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  finalColor = vec4(amb + diffuse + lightColor * spec, tint.a);
}
`
	// Pictures are lit mostly by ambient so colors stay close to the source image.
	litTexturedFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform sampler2D texture0;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  float NdotL = abs(dot(normalize(fragNormal), normalize(lightDir)));
  vec3 lit = tint.rgb * (0.8 + 0.2 * NdotL * lightIntensity) * lightColor;
  finalColor = vec4(max(lit, ambient.rgb * tint.rgb), tint.a);
}
`
)

var (
	ambient     = [4]float32{0.35, 0.34, 0.33, 1.0}
	lightColor  = [3]float32{1.0, 0.97, 0.92}
	lightFactor = float32(0.7)
	specPower   = float32(32.0)
	specAmount  = float32(0.15)
)

// setUniforms sets lighting uniforms on shader (cgo-safe: local arrays).
func (m *meshSet) setUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{m.viewPos[0], m.viewPos[1], m.viewPos[2]}
	lightDir := [3]float32{m.lightDir[0], m.lightDir[1], m.lightDir[2]}
	amb := [4]float32{ambient[0], ambient[1], ambient[2], ambient[3]}
	lc := [3]float32{lightColor[0], lightColor[1], lightColor[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lc[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{lightFactor}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specAmount}, rl.ShaderUniformFloat)
	}
}

// boxTransform scales a unit mesh to size, turns it by yaw (radians) and moves it to center.
func boxTransform(center, size [3]float32, yaw float32) rl.Matrix {
	m := rl.MatrixScale(size[0], size[1], size[2])
	if yaw != 0 {
		m = rl.MatrixMultiply(m, rl.MatrixRotateY(yaw))
	}
	return rl.MatrixMultiply(m, rl.MatrixTranslate(center[0], center[1], center[2]))
}

// uprightTransform stands the XZ unit plane up facing +Z, sizes it w x h, then places it
// like boxTransform.
func uprightTransform(center [3]float32, w, h, yaw float32) rl.Matrix {
	m := rl.MatrixScale(w, 1, h)
	m = rl.MatrixMultiply(m, rl.MatrixRotateX(rl.Pi/2))
	if yaw != 0 {
		m = rl.MatrixMultiply(m, rl.MatrixRotateY(yaw))
	}
	return rl.MatrixMultiply(m, rl.MatrixTranslate(center[0], center[1], center[2]))
}
