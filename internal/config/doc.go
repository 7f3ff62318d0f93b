// Package config loads richsheet configuration files.
//
// Files are TOML or YAML, selected by extension:
//
//	log_level = "debug"
//
//	[images]
//	base_dir = "assets"
//
//	[render]
//	spacing = 1
//	max_media_width = 40
//
//	[[transforms]]
//	attribute = "highlight"
//	value = "yellow"
//	bg = "#ffff00"
//
//	[[transforms]]
//	attribute = "color"
//	color = "foreground"
//
//	[[transforms]]
//	attribute = "tone"
//	script = '''
//	function style(value)
//	  if value == "loud" then return { bold = true, case = "upper" } end
//	end
//	'''
//
// Sections left out of the file stay unset, so the defaults of the
// generation services and renderer apply. RICHSHEET_* environment variables
// override the scalar settings; see EnvLoader.
package config
