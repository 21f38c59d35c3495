package render

// Per-cell quad, positioned from gl_InstanceID; each instance carries the
// glyph slot, colors and decoration flags of one cell
const vertexShader = `#version 300 es
precision highp float;

in float a_glyph;
in vec3 a_fg;
in vec3 a_bg;
in float a_flags;

uniform vec2 u_grid;
uniform vec2 u_cell;
uniform vec2 u_atlasGrid;
uniform vec2 u_atlasSlot;

out vec2 v_uv;
out vec2 v_local;
flat out vec3 v_fg;
flat out vec3 v_bg;
flat out int v_flags;

const vec2 corners[6] = vec2[6](
	vec2(0.0, 0.0), vec2(1.0, 0.0), vec2(0.0, 1.0),
	vec2(0.0, 1.0), vec2(1.0, 0.0), vec2(1.0, 1.0)
);

void main() {
	vec2 corner = corners[gl_VertexID];
	float id = float(gl_InstanceID);
	vec2 cell = vec2(mod(id, u_grid.x), floor(id / u_grid.x));

	vec2 clip = (cell + corner) / u_grid * 2.0 - 1.0;
	gl_Position = vec4(clip.x, -clip.y, 0.0, 1.0);

	vec2 slot = vec2(mod(a_glyph, u_atlasGrid.x), floor(a_glyph / u_atlasGrid.x));
	v_uv = (slot + corner) * u_atlasSlot;
	v_local = corner;
	v_fg = a_fg;
	v_bg = a_bg;
	v_flags = int(a_flags);
}
`

const fragmentShader = `#version 300 es
precision mediump float;

in vec2 v_uv;
in vec2 v_local;
flat in vec3 v_fg;
flat in vec3 v_bg;
flat in int v_flags;

uniform sampler2D u_atlas;
uniform vec2 u_cell;

out vec4 outColor;

void main() {
	float ink = texture(u_atlas, v_uv).a;
	float line = max(1.0 / u_cell.y, 0.05);
	if ((v_flags & 4) != 0) {
		ink = 0.0;
	} else {
		if ((v_flags & 1) != 0 && abs(v_local.y - 0.9) < line) {
			ink = 1.0;
		}
		if ((v_flags & 2) != 0 && abs(v_local.y - 0.5) < line) {
			ink = 1.0;
		}
	}
	outColor = vec4(mix(v_bg, v_fg, ink), 1.0);
}
`
