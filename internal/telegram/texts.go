package telegram

const startText = "🗂 *TaskBot*\n\n" +
	"Escribe una tarea directamente:\n" +
	"`Revisar doc @FGR |e Sellout |pU2 |f150226`\n\n" +
	"*Comandos:*\n" +
	"/show — ver todas las tareas\n" +
	"/show @TAG — filtrar por etiqueta\n" +
	"/show p PROYECTO — filtrar por proyecto\n" +
	"/done ID — marcar como hecha\n" +
	"/del ID — eliminar tarea\n" +
	"/edit ID campo valor — editar tarea\n" +
	"/undo — restaurar última acción\n" +
	"/help — ayuda completa"

const helpText = "📖 *Guía Rápida*\n\n" +
	"*Crear tarea:* escribe texto directo\n" +
	"`Lavar ropa |pU2`\n" +
	"`Llamar doctor @CS |f200226`\n" +
	"`Informe final @FGR |e Sellout |pN1 |f280226`\n\n" +
	"*Campos opcionales (cualquier orden):*\n" +
	"• `@TAG` → etiqueta (FGR=3, CETS=3, CS=2)\n" +
	"• `|e nombre` → proyecto\n" +
	"• `|p U/N + 1-3` → prioridad\n" +
	"• `|f ddmmyy` → fecha\n\n" +
	"*Comandos:*\n" +
	"`/show` — todas las tareas\n" +
	"`/show @FGR` — por etiqueta\n" +
	"`/show p Sellout` — por proyecto\n" +
	"`/done 3` — completar tarea ID 3\n" +
	"`/del 5` — eliminar tarea ID 5\n" +
	"`/edit 3 title Nuevo título`\n" +
	"`/edit 3 tag CS`\n" +
	"`/edit 3 project NuevoProj`\n" +
	"`/edit 3 priority U3`\n" +
	"`/edit 3 date 150326`\n" +
	"`/undo` — deshacer última acción\n" +
	"`/done all` — completar todas"
