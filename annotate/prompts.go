package annotate

// systemRole frames every oracle call in the pipeline.
const systemRole = "You are an expert in analyzing privacy policies and extracting personal information entities."

// extractPrompt asks for a strict JSON array of personal-data items.
// Near-synonyms must be merged into one canonical label so that set
// semantics downstream are meaningful.
const extractPrompt = `请从下列文本中全面、细致地抽取所有出现的"个人信息相关数据项"，包括但不限于：个人基本资料、身份信息、联系方式、设备信息、网络身份、健康信息、财产信息、教育信息、工作信息、上网记录、位置信息、标签信息、运动信息、第三方关联信息、其他敏感信息等。

- 只输出数据项本身，格式为严格的 JSON 数组。例如：["姓名","手机号码","设备型号","头像","昵称"]。
- 不要输出任何解释、注释或多余内容。
- 数据项应尽量细化、全面，不要遗漏任何与个人信息相关的实体。
- 如有同义项（如"手机号""手机号码"），请统一为标准表达（如"手机号码"）。
- 只输出严格闭合的 JSON，不要输出任何解释、注释、错误提示、代码块标记或多余内容。
- 输出必须是合法的 JSON 格式，不能缺少任何括号或逗号。

文本："%s"`

// classifyPrompt maps each data item onto the two-level category
// taxonomy. Placeholders: item list JSON, rendered category schema.
const classifyPrompt = `Based on the detailed classification schema provided below, classify the following personal data items.
For each item, provide its "一级类别" (Level 1 Category) and "二级类别" (Level 2 Category).
Return the result as a single, valid JSON object where keys are the data items. Do not include any other text or explanation outside the JSON object.

### Data Items to Classify
%s

### Classification Schema

%s

### Example Output Format
{
  "姓名": { "一级类别": "个人基本资料", "二级类别": "个人基本资料" }
}`

// scenePrompt maps a paragraph onto the three-level scenario hierarchy.
// Placeholders: paragraph text, classified-items JSON, rendered scene
// hierarchy.
const scenePrompt = `你是一名隐私政策场景分析专家。请根据下方的三层级场景标签体系，结合隐私政策文本，识别每个数据项涉及的具体场景。

【任务要求】
- 结合三层级场景标签体系和本段文本内容，判断该文本涉及的最合适的场景（优先匹配到层级3或者2，无法匹配时可用层级1）。
- 输出格式为：[[层级1, 层级2, 层级3]]，如无层级3则为[[层级1, 层级2]]。
- 如该段落涉及多个场景，可全部列出。
- 只输出JSON数组，不要有多余解释。

【待分析文本】
%s

【已分类数据项】
%s

【三层级场景标签体系】
%s`

// actionPrompt resolves the governing action verb for each relevant
// (scene, entity) pairing. The model decides which pairings are
// relevant; the pipeline does not enumerate the cross-product itself.
// Placeholders: paragraph text, scene tags JSON, entity list JSON,
// action vocabulary JSON.
const actionPrompt = `你是一名隐私政策分析专家。请根据下方的场景标签和实体列表，结合原文内容，判断每个"场景-实体"对的真实动作（如"收集""使用""分析""存储""共享""披露""删除""传输""展示""公开"等），如无法判断请输出"未识别"。
输出格式为严格的 JSON 数组，每个元素为 [层级1, 层级2, 层级3, 动作, 数据项]。

【原文】
%s

【场景标签】
%s

【实体列表】
%s

【常见动作词表】
%s
只输出严格闭合的 JSON，不要输出任何解释、注释、错误提示等。`
