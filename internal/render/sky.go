package render

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const skyboxScale = 1000

// SkyboxPaths are tried in order so the skybox is found whether run from repo root or cmd/gallery.
var SkyboxPaths = []string{
	"assets/skybox/skybox.png",
	"assets/skybox/skybox.jpg",
	"../../assets/skybox/skybox.png",
	"../../assets/skybox/skybox.jpg",
}

// Panoramas are roughly 2:1; anything else is loaded as a cubemap cross.
const (
	equirectAspectMin = 1.8
	equirectAspectMax = 2.2
)

// skybox is drawn around the camera before the room. It is visible through the gaps above
// the walls and when the viewer leaves the room.
type skybox struct {
	path     string
	equirect bool
	loaded   bool
	tex      rl.Texture2D
	mesh     rl.Mesh
	mtl      rl.Material
	camLoc   int32
	texLoc   int32
}

// findSkybox records the first existing skybox file. GPU loading waits for the first draw.
func findSkybox() *skybox {
	for _, p := range SkyboxPaths {
		cleaned := filepath.Clean(p)
		if _, err := os.Stat(cleaned); err == nil {
			return &skybox{path: cleaned}
		}
	}
	return nil
}

func (s *skybox) ensure() {
	if s == nil || s.loaded || s.path == "" {
		return
	}
	path := s.path
	s.path = ""

	img := rl.LoadImage(path)
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return
	}
	aspect := float32(img.Width) / float32(img.Height)
	s.equirect = aspect >= equirectAspectMin && aspect <= equirectAspectMax
	if !s.equirect {
		s.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutAutoDetect)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(s.tex) {
			return
		}
		s.mesh = rl.GenMeshCube(1, 1, 1)
		s.mtl = rl.LoadMaterialDefault()
		rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
		s.loaded = true
		return
	}

	s.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if !rl.IsTextureValid(s.tex) {
		return
	}
	shader := rl.LoadShaderFromMemory(equirectVS, equirectFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(s.tex)
		return
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	s.camLoc = rl.GetShaderLocation(shader, "cameraPosition")
	s.texLoc = rl.GetShaderLocation(shader, "skybox")
	s.loaded = true
}

// draw renders the skybox as a large cube centered on the camera.
func (s *skybox) draw(cam rl.Camera3D) {
	s.ensure()
	if s == nil || !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	pos := cam.Position
	transform := rl.MatrixMultiply(rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale), rl.MatrixTranslate(pos.X, pos.Y, pos.Z))
	if s.equirect {
		if s.camLoc >= 0 {
			rl.SetShaderValueV(s.mtl.Shader, s.camLoc, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3, 1)
		}
		if s.texLoc >= 0 {
			rl.SetShaderValueTexture(s.mtl.Shader, s.texLoc, s.tex)
		}
	}
	rl.DrawMesh(s.mesh, s.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

const (
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  finalColor = texture(skybox, vec2(lon / 6.28318530718 + 0.5, 0.5 - lat / 3.14159265359));
}
`
)
