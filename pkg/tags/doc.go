// Package tags registers the form-building template tags with pongo2.
//
//	{% form "login" action="/session" %}
//	  {% label "email" %}Email{% endlabel %}
//	  {% email "email" class="wide" required %}
//	  {% error "email" %}
//	  {% checkbox "remember" value="yes" %}
//	  {% submit "Sign in" %}
//	{% endform %}
//
// Field tags read their submitted value from form_vars[form][field] and their
// validation error from form_errors[form][field]; both names are
// configurable. Labels and fields that do not set an explicit id are paired
// through a per-render pairing.Tracker.
//
// Install wires the extension into a pongo2.TemplateSet. Tag parsers are
// global to pongo2 and registered once; each template set carries its own
// configuration in its Globals. Render through Extension.Execute so partials
// pulled in with {% include %} pair with the including template.
package tags
