package domain

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	m "propgen.dev/pkg/propgen/internal/model"
)

// TimestampLayout formats the display-only generation time as yyyy/M/d HH:mm.
const TimestampLayout = "2006/1/2 15:04"

const (
	// DefaultBasePackage is the package prefix of generated property classes.
	DefaultBasePackage = "com.mcstarrysky.aiyatsbus.module.kether.property.bukkit"
	// DefaultFrameworkPackage hosts AiyatsbusProperty and AiyatsbusGenericProperty.
	DefaultFrameworkPackage = "com.mcstarrysky.aiyatsbus.module.kether"
	// DefaultAuthor is written into the generated documentation comment.
	DefaultAuthor = "yanshiqwq"
)

// Renderer turns an extracted class into the text of its companion property class.
type Renderer interface {
	Render(packageName string, spec m.ClassSpec) ([]byte, error)
}

// TemplateConfig parameterises the generated header.
type TemplateConfig struct {
	BasePackage      string
	FrameworkPackage string
	Author           string
	// Now supplies the timestamp; time.Now when nil.
	Now func() time.Time
}

// DefaultTemplateConfig returns the Aiyatsbus defaults.
func DefaultTemplateConfig() TemplateConfig {
	return TemplateConfig{
		BasePackage:      DefaultBasePackage,
		FrameworkPackage: DefaultFrameworkPackage,
		Author:           DefaultAuthor,
	}
}

type templateRenderer struct {
	cfg TemplateConfig
}

// NewRenderer returns a Renderer backed by the property class template.
func NewRenderer(cfg TemplateConfig) Renderer {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &templateRenderer{cfg: cfg}
}

type propertyTemplateData struct {
	GeneratedPackage string
	FrameworkPackage string
	ImportPackage    string
	ClassName        string
	HyphenName       string
	Author           string
	Timestamp        string
	Accessors        []m.Accessor
	Mutators         []m.Mutator
}

func (r *templateRenderer) Render(packageName string, spec m.ClassSpec) ([]byte, error) {
	data := propertyTemplateData{
		GeneratedPackage: r.cfg.BasePackage + "." + spec.ClassName,
		FrameworkPackage: r.cfg.FrameworkPackage,
		ImportPackage:    packageName,
		ClassName:        spec.ClassName,
		HyphenName:       CamelToHyphen(spec.ClassName),
		Author:           r.cfg.Author,
		Timestamp:        r.cfg.Now().Format(TimestampLayout),
		Accessors:        spec.Accessors,
		Mutators:         spec.Mutators.Entries(),
	}

	var buf bytes.Buffer
	if err := propertyTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", spec.ClassName, err)
	}

	return buf.Bytes(), nil
}

var propertyTemplate = template.Must(template.New("property").Funcs(sprig.TxtFuncMap()).Parse(`package {{ .GeneratedPackage }}

import {{ .FrameworkPackage }}.AiyatsbusGenericProperty
import {{ .FrameworkPackage }}.AiyatsbusProperty
import {{ .ImportPackage }}.{{ .ClassName }}
import taboolib.common.OpenResult

/**
 * Aiyatsbus
 * {{ .GeneratedPackage }}
 *
 * @author {{ .Author }}
 * @since {{ .Timestamp }}
 *
 * # Generated by AiyatsBusPropertyGenerator #
 *
 */
@AiyatsbusProperty(
    id = {{ quote .HyphenName }},
    bind = {{ .ClassName }}::class
)
class Property{{ .ClassName }} : AiyatsbusGenericProperty<{{ .ClassName }}>({{ quote .HyphenName }}) {

    override fun readProperty(instance: {{ .ClassName }}, key: String): OpenResult {
        val property: Any? = when (key) {
{{- range .Accessors }}
            {{ quote .Name }} -> instance.{{ .Name }}
{{- end }}
            else -> return OpenResult.failed()
        }
        return OpenResult.successful(property)
    }

    override fun writeProperty(instance: {{ .ClassName }}, key: String, value: Any?): OpenResult {
{{- if .Mutators }}
        when (key) {
{{- range .Mutators }}
            {{ quote .Name }} -> instance.{{ .Name }} = value?.coerce{{ .Type }}() ?: return OpenResult.failed()
{{- end }}
            else -> return OpenResult.failed()
        }
        return OpenResult.successful()
{{- else }}
        return OpenResult.failed()
{{- end }}
    }
}
`))
