package renderer

// Panel surface shader: per-vertex normal, two-sided lambert lighting.
// Panels are open surfaces seen from both sides, so the diffuse term
// uses the absolute normal dot product.
const panelVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;

void main() {
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
}
`

const panelFragmentSrc = `
#version 410 core

in vec3 vNormal;

uniform vec3 uColor;
uniform float uAlpha;
uniform vec3 uLightDir;

out vec4 fragColor;

void main() {
	float diff = abs(dot(normalize(vNormal), normalize(uLightDir)));
	vec3 lit = uColor * (0.35 + 0.65 * diff);
	fragColor = vec4(lit, uAlpha);
}
`

// Flat shader for panel outlines.
const flatVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

void main() {
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
}
`

const flatFragmentSrc = `
#version 410 core

uniform vec4 uColor;

out vec4 fragColor;

void main() {
	fragColor = uColor;
}
`

// Point shader for the wandering agents.
const pointVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uView;
uniform mat4 uProj;
uniform float uPointSize;

out vec4 vColor;

void main() {
	vColor = aColor;
	gl_Position = uProj * uView * vec4(aPos, 1.0);
	gl_PointSize = uPointSize;
}
`

const pointFragmentSrc = `
#version 410 core

in vec4 vColor;

out vec4 fragColor;

void main() {
	// Round point sprite with a soft edge.
	vec2 d = gl_PointCoord - vec2(0.5);
	float r = length(d) * 2.0;
	float fade = 1.0 - smoothstep(0.8, 1.0, r);
	if (fade <= 0.0) {
		discard;
	}
	fragColor = vec4(vColor.rgb, vColor.a * fade);
}
`
