package renderer

// Textured spheres with a single point light. Emissive draws skip lighting.
const vertexShader = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;

uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;

out vec3 FragPos;
out vec3 Normal;
out vec2 UV;

void main() {
	vec4 world = model * vec4(aPos, 1.0);
	FragPos = world.xyz;
	Normal = mat3(model) * aNormal;
	UV = aUV;
	gl_Position = proj * view * world;
}
`

const fragmentShader = `#version 410 core
in vec3 FragPos;
in vec3 Normal;
in vec2 UV;

uniform sampler2D tex;
uniform vec3 lightPos;
uniform float ambient;
uniform float alpha;
uniform bool emissive;

out vec4 FragColor;

void main() {
	vec4 base = texture(tex, UV);
	if (emissive) {
		FragColor = vec4(base.rgb, base.a * alpha);
		return;
	}
	vec3 n = normalize(Normal);
	vec3 l = normalize(lightPos - FragPos);
	float diffuse = max(dot(n, l), 0.0);
	float shade = ambient + (1.0 - ambient) * diffuse;
	FragColor = vec4(base.rgb * shade, base.a * alpha);
}
`
